package checker

import (
	"fmt"
	"net/url"
	"strings"
)

// ProfileURL builds the lookup URL for an identifier. The endpoint returns
// an XML payload describing the profile, or an error document when the
// identifier is unclaimed.
func ProfileURL(baseURL, identifier string) string {
	return fmt.Sprintf("%s/%s?xml=1", strings.TrimRight(baseURL, "/"), url.PathEscape(identifier))
}
