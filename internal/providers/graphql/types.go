package graphql

import (
	"encoding/json"

	"github.com/preston-bernstein/dashboard-service/internal/providers/wire"
)

type request struct {
	Query         string `json:"query"`
	OperationName string `json:"operationName,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type envelope[T any] struct {
	Data   *T         `json:"data"`
	Errors []gqlError `json:"errors"`
}

type ordersData struct {
	Orders []wire.Order `json:"orders"`
}

type usersData struct {
	Users []wire.User `json:"users"`
}

type paymentsData struct {
	Payments []wire.Payment `json:"payments"`
}

type notificationsData struct {
	Notifications []wire.Notification `json:"notifications"`
}

type dashboardData struct {
	Orders        []wire.Order        `json:"orders"`
	Users         []wire.User         `json:"users"`
	Payments      []wire.Payment      `json:"payments"`
	Notifications []wire.Notification `json:"notifications"`
}

type healthData struct {
	Health json.RawMessage `json:"health"`
}
