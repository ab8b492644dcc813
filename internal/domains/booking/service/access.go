package service

import (
	"context"

	"vietour/internal/domains/booking/model"
	"vietour/shared/constant"
	"vietour/shared/failure"

	"github.com/rs/zerolog/log"
)

// authorize lets admins read anything, clients read their own bookings and guides read the
// bookings of their own profile. An empty userID or tourGuideID never matches.
func (s *serviceImpl) authorize(ctx context.Context, userID, tourGuideID string) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin {
		return nil
	}

	return s.owns(ctx, role, userID, tourGuideID)
}

// authorizeActor checks that the caller is the party of the booking it claims to act as.
func (s *serviceImpl) authorizeActor(ctx context.Context, booking model.Booking, actor model.ActorRole) error {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != string(actor) {
		return failure.Forbidden("you cannot act as " + string(actor) + " on this booking") //nolint:wrapcheck
	}

	return s.owns(ctx, role, booking.UserID, booking.TourGuideID)
}

func (s *serviceImpl) owns(ctx context.Context, role, userID, tourGuideID string) error {
	callerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if callerID == constant.Empty {
		return failure.Unauthorized("login required") //nolint:wrapcheck
	}

	switch role {
	case constant.RoleClient:
		if userID != constant.Empty && userID == callerID {
			return nil
		}
	case constant.RoleGuide:
		if tourGuideID == constant.Empty {
			break
		}

		guide, err := s.guideRepo.GetByUserID(ctx, callerID)
		if err != nil {
			if failure.IsKind(err, failure.KindNotFound) {
				break
			}

			log.Error().Err(err).Str("userID", callerID).Msg("failed to load tour guide profile")

			return failure.Persistence(err) //nolint:wrapcheck
		}

		if guide.ID == tourGuideID {
			return nil
		}
	}

	return failure.ResourceRestrictedError
}
