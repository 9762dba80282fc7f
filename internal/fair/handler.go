package fair

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"fairness-platform/internal/cache"
	"fairness-platform/internal/event"
	"fairness-platform/internal/monitoring"
	"fairness-platform/internal/store"
)

// RegisterRoutes exposes the fairness surface consumed by the verification
// pages and game front-ends. The routes are deliberately thin; everything
// interesting happens in the Service and Verifier.
func RegisterRoutes(r fiber.Router, service *Service, verifier *Verifier, bus *event.Bus, commitments *cache.Cache) {

	r.Post("/fair/sessions", func(c *fiber.Ctx) error {
		sess, err := service.StartSession()
		if err != nil {
			return fail(c, err)
		}
		commitments.SetCommitment(sess.SeedID, sess.Commitment)
		return c.JSON(sess)
	})

	r.Post("/fair/sessions/:id/close", func(c *fiber.Ctx) error {
		raw, err := service.CloseSession(c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"revealed_seed": raw})
	})

	r.Post("/fair/rounds", func(c *fiber.Ctx) error {
		var req RoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		result, err := service.PlayRound(req)
		if err != nil {
			return fail(c, err)
		}
		commitments.SetCommitment(result.SeedID, result.Commitment)
		return c.JSON(result)
	})

	r.Get("/fair/seeds/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if commitment, ok := commitments.Commitment(id); ok {
			return c.JSON(fiber.Map{"seed_id": id, "commitment": commitment})
		}
		commitment, err := service.Commitment(id)
		if err != nil {
			return fail(c, err)
		}
		commitments.SetCommitment(id, commitment)
		return c.JSON(fiber.Map{"seed_id": id, "commitment": commitment})
	})

	r.Post("/fair/seeds/:id/reveal", func(c *fiber.Ctx) error {
		raw, err := service.RevealSeed(c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"seed_id": c.Params("id"), "revealed_seed": raw})
	})

	r.Post("/fair/verify", func(c *fiber.Ctx) error {
		var rec Record
		if err := c.BodyParser(&rec); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}

		result, err := verifier.Verify(rec)
		if err != nil {
			return fail(c, err)
		}
		reportVerification(bus, rec.Commitment, result)
		return c.JSON(result)
	})

	r.Get("/fair/rounds/:id/verify", func(c *fiber.Ctx) error {
		result, err := verifier.VerifyRound(c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		reportVerification(bus, c.Params("id"), result)
		return c.JSON(result)
	})
}

func reportVerification(bus *event.Bus, subject string, result VerificationResult) {
	if result.CommitmentValid && result.OutcomeValid {
		monitoring.Verifications.WithLabelValues("valid").Inc()
		return
	}
	monitoring.Verifications.WithLabelValues("invalid").Inc()
	bus.Publish(event.EventVerifyFailed, &VerifyFailure{
		Subject: subject,
		Result:  result,
	})
}

// VerifyFailure is the payload published when a verification check fails.
type VerifyFailure struct {
	Subject string
	Result  VerificationResult
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownSeed),
		errors.Is(err, ErrUnknownEntity),
		errors.Is(err, store.ErrNotFound):
		monitoring.UnknownLookups.Inc()
		return fiber.StatusNotFound
	case errors.Is(err, ErrSeedNotRevealable),
		errors.Is(err, ErrNotYetRevealed),
		errors.Is(err, ErrAlreadyClosed):
		return fiber.StatusConflict
	case errors.Is(err, ErrEntityClosed),
		errors.Is(err, ErrWrongMode),
		errors.Is(err, ErrUnknownGame),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrEmptyKey):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
