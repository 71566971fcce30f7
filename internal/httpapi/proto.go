package httpapi

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"google.golang.org/protobuf/proto"
)

// maxRequestBody caps request bodies for both protobuf and JSON. A single
// interaction encodes well under 200 bytes either way.
const maxRequestBody = 4096

const protobufContentType = "application/x-protobuf"

func isProtobufType(ct string) bool {
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(ct))
	if err != nil {
		return false
	}
	return mt == "application/x-protobuf" ||
		mt == "application/protobuf" ||
		mt == "application/octet-stream"
}

// isProtobuf reports whether the request body is protobuf-encoded.
func isProtobuf(r *http.Request) bool {
	return isProtobufType(r.Header.Get("Content-Type"))
}

// wantsProtobuf reports whether any Accept entry names a protobuf type.
func wantsProtobuf(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		if isProtobufType(part) {
			return true
		}
	}
	return false
}

func readProto(r *http.Request, msg proto.Message) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return err
	}
	return proto.Unmarshal(body, msg)
}

func writeProto(w http.ResponseWriter, status int, msg proto.Message) {
	data, err := proto.Marshal(msg)
	if err != nil {
		http.Error(w, "proto marshal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", protobufContentType)
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
