package generation

import (
	"encoding/base64"
	"errors"
	"strings"
)

var errMalformedDataURI = errors.New("image must be a data URI of the form data:<mimetype>;base64,<payload>")

// DecodeDataURI splits a base64 data URI into its MIME type and payload
func DecodeDataURI(uri string) (*InlineImage, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, errMalformedDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errMalformedDataURI
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mimeType == "" {
		return nil, errMalformedDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errMalformedDataURI
	}
	return &InlineImage{MIMEType: mimeType, Data: data}, nil
}
