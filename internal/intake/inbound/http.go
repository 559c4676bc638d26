package inbound

import (
	"github.com/danargo/sitegate/internal/pkg/ratelimit"
	"github.com/danargo/sitegate/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/intake/contact", end.SubmitContact, r.Throttle("contact", ratelimit.PolicyAPI))
	r.POST("/api/v1/intake/booking", end.SubmitBooking, r.Throttle("booking", ratelimit.PolicyBooking))
	r.POST("/api/v1/intake/newsletter", end.SubscribeNewsletter, r.Throttle("newsletter", ratelimit.PolicyAPI))
}
