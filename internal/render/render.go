// Package render maps a checker state snapshot onto what a surface shows.
// It has no I/O and no styling; the terminal and web surfaces decorate the
// returned View themselves.
package render

import (
	"fmt"

	"github.com/fosscu/subdomain-checker/internal/model"
)

// BannerKind selects which of the mutually exclusive banners is visible.
type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerError
	BannerAvailable
	BannerTaken
)

func (k BannerKind) String() string {
	switch k {
	case BannerError:
		return "error"
	case BannerAvailable:
		return "available"
	case BannerTaken:
		return "taken"
	default:
		return "none"
	}
}

// View is the surface-independent render of one CheckState.
type View struct {
	Banner     BannerKind
	BannerText string

	// Submit control.
	SubmitBusy     bool
	SubmitDisabled bool

	// Echoed so surfaces can draw the field without a second snapshot.
	QueryText    string
	ParentDomain string
}

// Render derives a View from state. parentDomain defaults to fosscu.org.
func Render(state model.CheckState, parentDomain string) View {
	if parentDomain == "" {
		parentDomain = model.DefaultParentDomain
	}

	v := View{
		SubmitBusy:     state.IsPending,
		SubmitDisabled: state.IsPending,
		QueryText:      state.QueryText,
		ParentDomain:   parentDomain,
	}

	switch {
	case state.HasError():
		v.Banner = BannerError
		v.BannerText = state.ErrorMessage
	case state.Availability == model.AvailabilityFree:
		v.Banner = BannerAvailable
		v.BannerText = AvailableText(state.QueryText, parentDomain)
	case state.Availability == model.AvailabilityTaken:
		v.Banner = BannerTaken
		v.BannerText = TakenText(state.QueryText, parentDomain)
	}
	return v
}

// FQDN joins a subdomain and its parent domain.
func FQDN(subdomain, parentDomain string) string {
	return subdomain + "." + parentDomain
}

// AvailableText is the success banner line.
func AvailableText(subdomain, parentDomain string) string {
	return fmt.Sprintf("%s is available!", FQDN(subdomain, parentDomain))
}

// TakenText is the taken banner line.
func TakenText(subdomain, parentDomain string) string {
	return fmt.Sprintf("%s is not available, and it is already in use.", FQDN(subdomain, parentDomain))
}
