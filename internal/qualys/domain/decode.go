package domain

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	rootSimpleReturn  = "SIMPLE_RETURN"
	rootGenericReturn = "GENERIC_RETURN"
)

var errUnexpectedRoot = errors.New("not a confirmation envelope")

// Decode inspects the document root for an error envelope before
// unmarshalling body into v. A SIMPLE_RETURN with a CODE or a FAILED
// GENERIC_RETURN becomes an *APIError; anything undecodable becomes a
// *MalformedResponseError.
func Decode(body []byte, v interface{}) error {
	root, err := RootElement(body)
	if err != nil {
		return err
	}
	if err := envelopeError(root, body); err != nil {
		return err
	}
	if err := xml.Unmarshal(body, v); err != nil {
		return &MalformedResponseError{Element: root, Err: err}
	}
	return nil
}

// DecodeReader is Decode for a response stream.
func DecodeReader(r io.Reader, v interface{}) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return &MalformedResponseError{Element: "document", Err: err}
	}
	return Decode(body, v)
}

// CheckResponse validates the body of a mutating call. Only a SIMPLE_RETURN
// or GENERIC_RETURN that carries no error passes; an empty body or any other
// document is a *MalformedResponseError.
func CheckResponse(body []byte) error {
	root, err := RootElement(body)
	if err != nil {
		return err
	}
	if root != rootSimpleReturn && root != rootGenericReturn {
		return &MalformedResponseError{Element: root, Err: errUnexpectedRoot}
	}
	return envelopeError(root, body)
}

// IsErrorEnvelope reports whether body is a well-formed error envelope.
func IsErrorEnvelope(body []byte) (*APIError, bool) {
	root, err := RootElement(body)
	if err != nil {
		return nil, false
	}
	var apiErr *APIError
	if errors.As(envelopeError(root, body), &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// RootElement returns the local name of the first element of body.
func RootElement(body []byte) (string, error) {
	d := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return "", &MalformedResponseError{Element: "document", Err: err}
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}

func envelopeError(root string, body []byte) error {
	switch root {
	case rootSimpleReturn:
		var env SimpleReturn
		if err := xml.Unmarshal(body, &env); err != nil {
			return &MalformedResponseError{Element: root, Err: err}
		}
		if env.Response.Code != "" {
			return &APIError{Code: env.Response.Code, Message: strings.TrimSpace(env.Response.Text)}
		}
	case rootGenericReturn:
		var env GenericReturn
		if err := xml.Unmarshal(body, &env); err != nil {
			return &MalformedResponseError{Element: root, Err: err}
		}
		if strings.EqualFold(env.Return.Status, "FAILED") {
			return &APIError{Code: env.Return.Number, Message: strings.TrimSpace(env.Return.Text)}
		}
	}
	return nil
}

// StreamVulns decodes a knowledge base document one VULN at a time. fn is
// called in document order; a non-nil return stops the scan.
func StreamVulns(r io.Reader, fn func(VulnXML) error) error {
	d := xml.NewDecoder(r)
	rootSeen := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			if !rootSeen {
				return &MalformedResponseError{Element: "document", Err: io.ErrUnexpectedEOF}
			}
			return nil
		}
		if err != nil {
			return &MalformedResponseError{Element: "VULN_LIST", Err: err}
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !rootSeen {
			rootSeen = true
			if se.Name.Local == rootSimpleReturn {
				var env SimpleReturn
				if err := d.DecodeElement(&env, &se); err != nil {
					return &MalformedResponseError{Element: rootSimpleReturn, Err: err}
				}
				if env.Response.Code != "" {
					return &APIError{Code: env.Response.Code, Message: strings.TrimSpace(env.Response.Text)}
				}
				return nil
			}
			continue
		}
		if se.Name.Local != "VULN" {
			continue
		}
		var vuln VulnXML
		if err := d.DecodeElement(&vuln, &se); err != nil {
			return &MalformedResponseError{Element: "VULN", Err: err}
		}
		if err := fn(vuln); err != nil {
			return err
		}
	}
}
