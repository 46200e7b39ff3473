package transport

// Meta carries request-scoped details echoed back with every response.
type Meta struct {
	RequestID string `json:"requestId,omitempty"`
}

// Envelope wraps every API response. Data may accompany an error, as on a degraded health check.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Meta   *Meta       `json:"meta,omitempty"`
}

func NewSuccess(data interface{}, meta *Meta) Envelope {
	return Envelope{Status: "success", Data: data, Meta: meta}
}

func NewError(code, message string, meta *Meta) Envelope {
	return Envelope{Status: "error", Code: code, Error: message, Meta: meta}
}

// WithData attaches a payload to an envelope.
func (e Envelope) WithData(data interface{}) Envelope {
	e.Data = data
	return e
}
