package utils

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/asaskevich/govalidator"
)

// RxEmail is a regex used to validate e-mail addresses, according with the reference https://www.alexedwards.net/blog/validation-snippets-for-go#email-validation.
// It's free to use under the [MIT Licence](https://opensource.org/licenses/MIT)
var rxEmail = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

const (
	minWalletAddressLength = 26
	maxWalletAddressLength = 128
)

func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if !rxEmail.MatchString(email) {
		return fmt.Errorf("the provided email is not valid")
	}

	return nil
}

// ValidateWalletAddress only checks the length of the address, the network-specific format is left to the widget.
func ValidateWalletAddress(address string) error {
	if !govalidator.StringLength(address, fmt.Sprint(minWalletAddressLength), fmt.Sprint(maxWalletAddressLength)) {
		return fmt.Errorf("wallet address must have between %d and %d characters", minWalletAddressLength, maxWalletAddressLength)
	}
	if !govalidator.IsPrintableASCII(address) {
		return fmt.Errorf("wallet address must only contain printable ASCII characters")
	}

	return nil
}

// ValidateOrigin checks that origin is an absolute http(s) URL with a DNS or IP host, as sent in an Origin header.
func ValidateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("parsing origin %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin %q must use the http or https scheme", origin)
	}

	host := u.Hostname()
	if !govalidator.IsDNSName(host) && !govalidator.IsIP(host) {
		return fmt.Errorf("%q is not a valid DNS name", host)
	}

	return nil
}
