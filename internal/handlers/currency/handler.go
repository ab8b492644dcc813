package currency

import (
	"net/http"

	"vietour/infras/otel"
	"vietour/internal/domains/currency/model/dto"
	"vietour/internal/domains/currency/service"
	"vietour/shared"
	"vietour/shared/constant"
	"vietour/shared/validator"
	"vietour/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Currency
	otel    otel.Otel
}

func New(service service.Currency, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/currency", func(routerGroup chi.Router) {
		routerGroup.Get("/rates", handler.GetRates)
		routerGroup.Post("/convert", handler.Convert)
		routerGroup.Get("/history", handler.History)
	})
}

// GetRates returns the rates quoted against ?base (USD by default). ?real_time=true skips the snapshot.
// @Summary Get exchange rates
// @Tags Currency
// @Produce json
// @Param base query string false "Base currency code"
// @Param real_time query bool false "Bypass the cached snapshot"
// @Success 200 {object} dto.RatesResponse
// @Failure 502 {object} response.Error
// @Router /v1/currency/rates [get]
func (handler *Handler) GetRates(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRates")
	defer scope.End()

	query := request.URL.Query()

	realTime := false
	if value := shared.ConvertStringToBool(query.Get(constant.RequestParamRealTime)); value != nil {
		realTime = *value
	}

	rates, err := handler.service.GetRates(ctx, realTime, query.Get(constant.RequestParamBase))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, rates)
}

// Convert converts an amount between two currencies.
// @Summary Convert currency
// @Tags Currency
// @Accept json
// @Produce json
// @Param request body dto.ConvertRequest true "Conversion Request"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/currency/convert [post]
func (handler *Handler) Convert(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Convert")
	defer scope.End()

	req := dto.ConvertRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Convert(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// History returns the caller's latest conversions, newest first.
// @Summary Get conversion history
// @Tags Currency
// @Produce json
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} response.Error
// @Router /v1/currency/history [get]
// @Security BearerAuth
func (handler *Handler) History(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".History")
	defer scope.End()

	res, err := handler.service.History(ctx)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
