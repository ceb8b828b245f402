package chat

import "PairChat/logger"

type Dispatcher struct {
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

func (d *Dispatcher) Register(h Handler) { d.handlers[h.Type()] = h }

func (d *Dispatcher) GetHandler(frameType string) Handler {
	h, ok := d.handlers[frameType]
	if !ok {
		logger.Debugf("no handler for type=%s", frameType)
		return nil
	}
	return h
}
