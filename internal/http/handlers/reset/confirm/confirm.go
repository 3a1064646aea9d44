package confirm

import (
	"errors"
	"net/http"
	"resetpass/internal/core/domain/directory"
	e "resetpass/internal/core/domain/errors"
	ratelimiter "resetpass/internal/core/domain/rate_limiter"
	"resetpass/internal/core/domain/reset"
	"resetpass/internal/core/services"
	confirmreset "resetpass/internal/core/services/confirm_reset"
	"resetpass/internal/http/handlers/reset/check"
	"resetpass/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[confirmreset.Input, confirmreset.Result]
}

func New(
	service services.Service[confirmreset.Input, confirmreset.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token string
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(1, 1024)),
	)
}

// A missing cookie, an unknown session and a wrong token all render the
// same answer so the endpoint confirms nothing about pending requests.
func renderNoPendingRequest(rw http.ResponseWriter) {
	response.RenderStatuses(
		rw,
		http.StatusUnprocessableEntity,
		response.Status{Level: response.Danger, Message: "No pending password change request was found for this link."},
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{Token: r.URL.Query().Get("token")}
	if err := input.Validate(); err != nil {
		renderNoPendingRequest(rw)
		return
	}
	cookie, err := r.Cookie(check.SessionCookieName)
	if err != nil || cookie.Value == "" {
		renderNoPendingRequest(rw)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		confirmreset.Input{
			SessionID: reset.SessionID(cookie.Value),
			Token:     reset.ConfirmationToken(input.Token),
		},
	)
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	if errors.Is(err, reset.ErrNoPendingRequest) || errors.Is(err, reset.ErrTokenMismatch) {
		renderNoPendingRequest(rw)
		return
	}
	if errors.Is(err, directory.ErrUnavailable) || errors.Is(err, directory.ErrBindFailed) {
		response.RenderStatuses(
			rw,
			http.StatusBadGateway,
			response.Status{Level: response.Danger, Message: "The directory cannot be reached. Try again later."},
		)
		return
	}
	if errors.Is(err, directory.ErrNotFound) || errors.Is(err, directory.ErrAmbiguous) {
		response.RenderStatuses(
			rw,
			http.StatusUnprocessableEntity,
			response.Status{Level: response.Warning, Message: "The account could not be resolved. Contact the IT service."},
		)
		return
	}
	if errors.Is(err, directory.ErrWriteRejected) {
		response.RenderStatuses(
			rw,
			http.StatusUnprocessableEntity,
			response.Status{Level: response.Danger, Message: "The directory refused the new password. Contact the IT service."},
		)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.RenderStatuses(
		rw,
		http.StatusOK,
		response.Status{Level: response.Success, Message: "Your password has been changed."},
		response.Status{Level: response.Info, Message: "The new password has been sent to " + string(result.Email) + "."},
	)
}
