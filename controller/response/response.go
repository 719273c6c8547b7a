// Package response implements the controller-side response-kind
// parsers (C5), grounded on crates/ascot-controller/src/response.rs:
// one parser per ResponseKind, plus a Skipped variant for requests a
// policy engine chose not to send.
package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ascotgo/internal/deviceinfo"
)

// Response is the common interface every response-kind wrapper
// satisfies; it exists to let callers pattern-match with a type switch
// the way the source's Response enum is matched.
type Response interface {
	isResponse()
}

// Skipped is returned by Request.Dispatch when the caller set skip,
// short-circuiting before any network I/O.
type Skipped struct{}

func (Skipped) isResponse() {}

// OkBody carries {"action_terminated_correctly": bool}.
type OkBody struct {
	ActionTerminatedCorrectly bool `json:"action_terminated_correctly"`
}

// OkResponseParser wraps an HTTP response declared as ResponseKind Ok.
type OkResponseParser struct{ resp *http.Response }

func NewOk(resp *http.Response) *OkResponseParser { return &OkResponseParser{resp: resp} }

func (*OkResponseParser) isResponse() {}

// ParseBody decodes the response body into an OkBody, closing the body
// when done.
func (p *OkResponseParser) ParseBody() (OkBody, error) {
	defer p.resp.Body.Close()
	var body OkBody
	if err := json.NewDecoder(p.resp.Body).Decode(&body); err != nil {
		return OkBody{}, fmt.Errorf("response: decoding Ok body: %w", err)
	}
	return body, nil
}

// SerialResponseParser wraps an HTTP response declared as ResponseKind
// Serial: an arbitrary, operation-defined JSON payload.
type SerialResponseParser struct{ resp *http.Response }

func NewSerial(resp *http.Response) *SerialResponseParser { return &SerialResponseParser{resp: resp} }

func (*SerialResponseParser) isResponse() {}

// ParseBody decodes the response body into dest, a caller-supplied
// pointer, closing the body when done.
func (p *SerialResponseParser) ParseBody(dest any) error {
	defer p.resp.Body.Close()
	if err := json.NewDecoder(p.resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("response: decoding Serial body: %w", err)
	}
	return nil
}

// InfoResponseParser wraps an HTTP response declared as ResponseKind
// Info: a serialized deviceinfo.Info.
type InfoResponseParser struct{ resp *http.Response }

func NewInfo(resp *http.Response) *InfoResponseParser { return &InfoResponseParser{resp: resp} }

func (*InfoResponseParser) isResponse() {}

// ParseBody decodes the response body into a deviceinfo.Info, closing
// the body when done.
func (p *InfoResponseParser) ParseBody() (deviceinfo.Info, error) {
	defer p.resp.Body.Close()
	var info deviceinfo.Info
	if err := json.NewDecoder(p.resp.Body).Decode(&info); err != nil {
		return deviceinfo.Info{}, fmt.Errorf("response: decoding Info body: %w", err)
	}
	return info, nil
}

// StreamResponse wraps an HTTP response declared as ResponseKind
// Stream: opaque bytes with a handler-supplied Content-Type, never
// parsed by the framework.
type StreamResponse struct{ resp *http.Response }

func NewStream(resp *http.Response) *StreamResponse { return &StreamResponse{resp: resp} }

func (*StreamResponse) isResponse() {}

// Open returns the raw response body reader; the caller is responsible
// for closing it.
func (s *StreamResponse) Open() io.ReadCloser { return s.resp.Body }

// ContentType returns the Content-Type header the device handler set
// for this stream.
func (s *StreamResponse) ContentType() string { return s.resp.Header.Get("Content-Type") }
