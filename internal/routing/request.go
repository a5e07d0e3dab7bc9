package routing

import "net/http"

// Request holds the request attributes that rules match against.
type Request struct {
	// Host is matched as given, including any port.
	Host    string
	Path    string
	Headers http.Header
}

// RequestFromHTTP extracts the matching attributes of an HTTP request.
func RequestFromHTTP(r *http.Request) Request {
	host := r.Host
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}

	var path string
	if r.URL != nil {
		path = r.URL.Path
	}

	return Request{
		Host:    host,
		Path:    path,
		Headers: r.Header,
	}
}
