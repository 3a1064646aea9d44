package check

import (
	"errors"
	"net/http"
	"resetpass/internal/core/domain/directory"
	e "resetpass/internal/core/domain/errors"
	ratelimiter "resetpass/internal/core/domain/rate_limiter"
	"resetpass/internal/core/domain/reset"
	"resetpass/internal/core/services"
	requestreset "resetpass/internal/core/services/request_reset"
	"resetpass/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

const SessionCookieName = "reset_session"

type Handler struct {
	service services.Service[requestreset.Input, requestreset.Result]
}

func New(
	service services.Service[requestreset.Input, requestreset.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Login string
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Login, validation.Required, validation.Length(1, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input := Input{Login: r.PostFormValue("login")}
	if err := input.Validate(); err != nil {
		response.RenderStatuses(
			rw,
			http.StatusBadRequest,
			response.Status{Level: response.Danger, Message: "Enter your account name."},
		)
		return
	}

	sessionID := ensureSessionCookie(rw, r)
	result, err := h.service.Run(
		r.Context(),
		requestreset.Input{
			SessionID: sessionID,
			Login:     input.Login,
		},
	)
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	if errors.Is(err, reset.ErrEmptyLogin) {
		response.RenderStatuses(
			rw,
			http.StatusBadRequest,
			response.Status{Level: response.Danger, Message: "Enter your account name."},
		)
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
	if errors.Is(err, directory.ErrNotFound) {
		response.RenderStatuses(
			rw,
			http.StatusUnprocessableEntity,
			response.Status{Level: response.Warning, Message: "No account matches this name."},
		)
		return
	}
	if errors.Is(err, directory.ErrAmbiguous) {
		response.RenderStatuses(
			rw,
			http.StatusUnprocessableEntity,
			response.Status{Level: response.Warning, Message: "Several accounts match this name. Contact the IT service."},
		)
		return
	}
	if errors.Is(err, reset.ErrNoMailAddress) {
		response.RenderStatuses(
			rw,
			http.StatusUnprocessableEntity,
			response.Status{Level: response.Warning, Message: "No mail address is registered for this account. Contact the IT service."},
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
		response.Status{Level: response.Success, Message: "Your request has been registered."},
		response.Status{Level: response.Info, Message: "A confirmation link has been sent to " + string(result.Email) + "."},
	)
}

// ensureSessionCookie returns the session bound to the requester, issuing
// a fresh one when the cookie is missing or unreadable.
func ensureSessionCookie(rw http.ResponseWriter, r *http.Request) reset.SessionID {
	cookie, err := r.Cookie(SessionCookieName)
	if err == nil && cookie.Value != "" {
		return reset.SessionID(cookie.Value)
	}
	id := uuid.NewString()
	http.SetCookie(rw, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return reset.SessionID(id)
}
