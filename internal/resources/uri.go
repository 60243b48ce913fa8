// Package resources registers the read-only mail:// MCP resources. They
// expose the same normalized records as the query tools, addressed by
// URI instead of by tool call.
package resources

import (
	"net/url"
	"strings"

	"github.com/jsievers/mailbridge/internal/mailerr"
)

// ResourceRef is a parsed mail:// URI: a kind plus at most one argument
// (message id or search query).
type ResourceRef struct {
	Kind ResourceKind
	Arg  string
}

// ResourceKind enumerates the addressable resource types.
type ResourceKind string

const (
	KindLabels  ResourceKind = "labels"
	KindInbox   ResourceKind = "inbox"
	KindMessage ResourceKind = "message"
	KindSearch  ResourceKind = "search"
)

// ParseResourceURI parses a mail:// URI. Unknown schemes map to
// NotSupported, malformed paths to Invalid. Search queries arrive
// percent-encoded and are decoded here.
func ParseResourceURI(uri string) (ResourceRef, error) {
	const op = "resources.ParseResourceURI"

	rest, ok := strings.CutPrefix(uri, "mail://")
	if !ok {
		return ResourceRef{}, mailerr.Newf(mailerr.NotSupported, op, "unsupported resource scheme: %s", uri)
	}

	kind, arg, hasArg := strings.Cut(rest, "/")
	switch ResourceKind(kind) {
	case KindLabels, KindInbox:
		if hasArg {
			return ResourceRef{}, mailerr.Newf(mailerr.Invalid, op, "resource %s takes no argument", kind)
		}
		return ResourceRef{Kind: ResourceKind(kind)}, nil

	case KindMessage:
		if !hasArg || arg == "" {
			return ResourceRef{}, mailerr.New(mailerr.Invalid, op, "message resource requires an id")
		}
		return ResourceRef{Kind: KindMessage, Arg: arg}, nil

	case KindSearch:
		if !hasArg || arg == "" {
			return ResourceRef{}, mailerr.New(mailerr.Invalid, op, "search resource requires a query")
		}
		decoded, err := url.PathUnescape(arg)
		if err != nil {
			return ResourceRef{}, mailerr.Wrap(mailerr.Invalid, op, err)
		}
		return ResourceRef{Kind: KindSearch, Arg: decoded}, nil
	}

	return ResourceRef{}, mailerr.Newf(mailerr.NotSupported, op, "unknown resource type: %s", kind)
}
