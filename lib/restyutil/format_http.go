package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/go-resty/resty/v2"
)

// writeHeaders writes headers sorted by key, one "prefix Key: Value" line
// per value.
func writeHeaders(out *strings.Builder, prefix string, headers http.Header) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		for _, v := range headers[k] {
			fmt.Fprintf(out, "%s %s: %s\n", prefix, k, v)
		}
	}
}

func requestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("(failed to get request body: %v)", err)
	}
	defer body.Close()
	contents, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("(failed to read request body: %v)", err)
	}
	return string(contents)
}

// formatHttpMessage renders an exchange the way `curl -v` shows it, request
// lines start with ">" and response lines with "<", each followed by its
// body when there is one.
func formatHttpMessage(res *resty.Response) string {
	var out strings.Builder

	fmt.Fprintf(&out, "> %s %s\n", res.Request.Method, res.Request.URL)
	if res.Request.RawRequest != nil {
		writeHeaders(&out, ">", res.Request.RawRequest.Header)
	}
	if body := requestBody(res.Request.RawRequest); body != "" {
		out.WriteString("\n")
		out.WriteString(body)
		out.WriteString("\n")
	}

	out.WriteString("\n")
	fmt.Fprintf(&out, "< %s\n", res.Status())
	if location, err := res.RawResponse.Location(); err == nil {
		fmt.Fprintf(&out, "< (redirected to %s)\n", location)
	}
	writeHeaders(&out, "<", res.Header())
	out.WriteString("\n")
	out.WriteString(res.String())

	return out.String()
}
