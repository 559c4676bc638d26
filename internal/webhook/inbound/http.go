package inbound

import (
	"github.com/danargo/sitegate/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/webhooks", end.Register)
	r.GET("/api/v1/webhooks", end.List)
	r.GET("/api/v1/webhooks/:id", end.Detail)
	r.PUT("/api/v1/webhooks/:id", end.Update)
	r.DELETE("/api/v1/webhooks/:id", end.Delete)

	r.GET("/api/v1/webhooks/:id/deliveries", end.ListDeliveries)
	r.POST("/api/v1/webhooks/deliveries/:deliveryID/retry", end.RetryDelivery)
}
