package wire

import "encoding/json"

func init() {
	register(TypeOkResponse, "generic_ok_response")
	register(TypeErrorResponse, "generic_error_response")
}

// OkResponse acknowledges a request that produced no dedicated response.
type OkResponse struct {
	Message string
}

func (m *OkResponse) Type() uint64 { return TypeOkResponse }

func (m *OkResponse) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type    uint64 `json:"type"`
		Message string `json:"message"`
	}{TypeOkResponse, m.Message})
}

func DeserializeOkResponse(d *Document) (*OkResponse, bool) {
	if !d.requires("generic_ok_response", "message") ||
		!d.matches("generic_ok_response", TypeOkResponse) {
		return nil, false
	}
	return &OkResponse{Message: d.String("message")}, true
}

// ErrorResponse reports a failed request. Code is machine-readable, Error is
// for humans, Pretty is an optional longer description, and ClearLoginData
// tells the client to discard any cached credentials.
type ErrorResponse struct {
	Code           string
	Error          string
	Pretty         string
	ClearLoginData bool
}

func (m *ErrorResponse) Type() uint64 { return TypeErrorResponse }

func (m *ErrorResponse) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type           uint64 `json:"type"`
		Code           string `json:"code"`
		Error          string `json:"error"`
		Pretty         string `json:"pretty_error"`
		ClearLoginData bool   `json:"clear_login_data"`
	}{TypeErrorResponse, m.Code, m.Error, m.Pretty, m.ClearLoginData})
}

func DeserializeErrorResponse(d *Document) (*ErrorResponse, bool) {
	if !d.requires("generic_error_response", "code", "error", "pretty_error", "clear_login_data") ||
		!d.matches("generic_error_response", TypeErrorResponse) {
		return nil, false
	}
	return &ErrorResponse{
		Code:           d.String("code"),
		Error:          d.String("error"),
		Pretty:         d.String("pretty_error"),
		ClearLoginData: d.Bool("clear_login_data"),
	}, true
}
