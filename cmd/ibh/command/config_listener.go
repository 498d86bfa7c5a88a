package command

import (
	"fmt"
	"net/http"

	"github.com/Oipo/IdleBossHunter/internal/listener"
	"github.com/pixil98/go-errors/errors"
	"github.com/pixil98/go-service/service"
)

type ListenerConfig struct {
	Port uint16 `json:"port"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}

	return el.Err()
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager, metrics http.Handler) (service.Worker, error) {
	return listener.NewWebsocketListener(cl.Port, cm, listener.WithMetricsHandler(metrics)), nil
}
