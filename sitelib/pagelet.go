package sitelib

import (
	"fmt"
	"strings"
)

// PageletID identifies a pagelet.
type PageletID string

// PageletLocation is where on its page a pagelet is shown.
type PageletLocation int

const (
	TopSidebar PageletLocation = iota
	BottomSidebar
	Callout
)

var pageletLocationNames = []string{"topSidebar", "bottomSidebar", "callout"}

func (l PageletLocation) String() string {
	if l < 0 || int(l) >= len(pageletLocationNames) {
		return fmt.Sprintf("PageletLocation(%d)", int(l))
	}
	return pageletLocationNames[l]
}

// IsSidebar reports whether l is one of the sidebar locations.
func (l PageletLocation) IsSidebar() bool {
	return l == TopSidebar || l == BottomSidebar
}

// ParsePageletLocation parses the name of a location, ignoring case.
func ParsePageletLocation(s string) (PageletLocation, error) {
	for i, name := range pageletLocationNames {
		if strings.EqualFold(s, name) {
			return PageletLocation(i), nil
		}
	}
	return TopSidebar, fmt.Errorf("unknown pagelet location %q", s)
}

func (l PageletLocation) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *PageletLocation) UnmarshalText(text []byte) error {
	v, err := ParsePageletLocation(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// BorderMode is a pagelet's own border setting.
type BorderMode int

const (
	// BorderDefault uses the site setting pagelets.showBorder.
	BorderDefault BorderMode = iota
	BorderOn
	BorderOff
)

var borderModeNames = []string{"default", "on", "off"}

func (b BorderMode) String() string {
	if b < 0 || int(b) >= len(borderModeNames) {
		return fmt.Sprintf("BorderMode(%d)", int(b))
	}
	return borderModeNames[b]
}

// ParseBorderMode parses the name of a border mode. The empty string is
// BorderDefault.
func ParseBorderMode(s string) (BorderMode, error) {
	if s == "" {
		return BorderDefault, nil
	}
	for i, name := range borderModeNames {
		if strings.EqualFold(s, name) {
			return BorderMode(i), nil
		}
	}
	return BorderDefault, fmt.Errorf("unknown border mode %q", s)
}

// Pagelet is a small block of content hosted by exactly one page, shown in
// one of its sidebars or as a callout.
type Pagelet struct {
	s *Site

	id       PageletID
	page     PageID
	location PageletLocation
	sortKey  int64

	title      string
	bodyRef    string
	showBorder BorderMode
}

func (pl *Pagelet) ID() PageletID {
	return pl.id
}

// Page returns the hosting page, nil if pl is detached.
func (pl *Pagelet) Page() *Page {
	if pl.page == "" {
		return nil
	}
	return pl.s.pages[pl.page]
}

func (pl *Pagelet) Location() PageletLocation {
	return pl.location
}

// SortKey orders pl within its location on its page.
func (pl *Pagelet) SortKey() int64 {
	return pl.sortKey
}

func (pl *Pagelet) Title() string {
	return pl.title
}

// BodyRef references the body content, which is stored outside the core.
func (pl *Pagelet) BodyRef() string {
	return pl.bodyRef
}

func (pl *Pagelet) BorderMode() BorderMode {
	return pl.showBorder
}

// ShowBorder resolves the border mode against the site setting.
func (pl *Pagelet) ShowBorder() bool {
	switch pl.showBorder {
	case BorderOn:
		return true
	case BorderOff:
		return false
	}
	return pl.s.Conf.Pagelets.ShowBorder
}

func (pl *Pagelet) String() string {
	return "pagelet " + string(pl.id) + " " + pl.title
}

func (pl *Pagelet) SetTitle(title string) {
	pl.changed(func() { pl.title = title })
}

func (pl *Pagelet) SetBodyRef(ref string) {
	pl.changed(func() { pl.bodyRef = ref })
}

func (pl *Pagelet) SetBorderMode(b BorderMode) {
	pl.changed(func() { pl.showBorder = b })
}

// changed applies fn and marks the pages showing pl stale.
func (pl *Pagelet) changed(fn func()) {
	host := pl.Page()
	if host == nil {
		fn()
		return
	}
	e := pl.s.beginEdit(pl.location.staleReason(), host)
	fn()
	host.touch()
	e.commit()
}

func (l PageletLocation) staleReason() StaleReason {
	if l.IsSidebar() {
		return ReasonSidebar
	}
	return ReasonSelf
}
