package dto

import (
	"vietour/internal/domains/currency/model"
	"vietour/shared/constant"
	"vietour/shared/money"
	"vietour/shared/timezone"

	"github.com/shopspring/decimal"
)

type ConvertRequest struct {
	From     string  `json:"from"      validate:"required,len=3"`
	To       string  `json:"to"        validate:"required,len=3"`
	Amount   float64 `json:"amount"`
	RealTime bool    `json:"real_time"`
}

type ConvertResponse struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	Amount          float64 `json:"amount"`
	Result          float64 `json:"result"`
	Rate            float64 `json:"rate"`
	FormattedAmount string  `json:"formatted_amount"`
	FormattedResult string  `json:"formatted_result"`
	RealTime        bool    `json:"real_time"`
	Timestamp       string  `json:"timestamp"`
}

func (r *ConvertResponse) FromModel(record model.ConversionRecord) {
	r.From = record.From
	r.To = record.To
	r.Amount = record.Amount
	r.Result = record.Result
	r.Rate = record.Rate
	r.FormattedAmount = money.Format(decimal.NewFromFloat(record.Amount), record.From)
	r.FormattedResult = money.Format(decimal.NewFromFloat(record.Result), record.To)
	r.RealTime = record.RealTime
	r.Timestamp = timezone.Format(record.Timestamp, constant.DateFormat)
}

type RatesResponse struct {
	Base     string               `json:"base"`
	RealTime bool                 `json:"real_time"`
	Rates    []model.CurrencyRate `json:"rates"`
}

type HistoryResponse struct {
	Records []ConvertResponse `json:"records"`
}

func (r *HistoryResponse) FromModels(records []model.ConversionRecord) {
	r.Records = make([]ConvertResponse, len(records))
	for i, record := range records {
		r.Records[i].FromModel(record)
	}
}
