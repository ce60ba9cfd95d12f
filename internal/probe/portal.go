package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

// XDG desktop portal settings constants.
const (
	PortalDest          = "org.freedesktop.portal.Desktop"
	PortalPath          = "/org/freedesktop/portal/desktop"
	SettingsInterface   = "org.freedesktop.portal.Settings"
	AppearanceNamespace = "org.freedesktop.appearance"
	ColorSchemeKey      = "color-scheme"
)

// Portal color-scheme values.
const (
	portalNoPreference uint32 = 0
	portalPreferDark   uint32 = 1
	portalPreferLight  uint32 = 2
)

// busCall invokes a method on the portal settings object and returns its
// single variant result.
type busCall func(ctx context.Context, method string, args ...any) (dbus.Variant, error)

// Portal reads the color-scheme setting from the XDG desktop portal over the
// D-Bus session bus.
type Portal struct {
	logger *slog.Logger
	call   busCall
}

// NewPortal creates a Portal source using the shared session bus.
func NewPortal(logger *slog.Logger) *Portal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Portal{
		logger: logger,
		call:   sessionCall,
	}
}

// Name returns "portal".
func (p *Portal) Name() string { return SourcePortal }

// Detect reads org.freedesktop.appearance color-scheme. It tries ReadOne
// first and falls back to the deprecated Read for older portals.
func (p *Portal) Detect(ctx context.Context) (Scheme, error) {
	v, err := p.call(ctx, SettingsInterface+".ReadOne", AppearanceNamespace, ColorSchemeKey)
	if err != nil {
		p.logger.Debug("portal ReadOne failed, trying Read", "error", err)
		var rerr error
		v, rerr = p.call(ctx, SettingsInterface+".Read", AppearanceNamespace, ColorSchemeKey)
		if rerr != nil {
			return SchemeUnknown, fmt.Errorf("failed to read portal color-scheme: %w", errors.Join(err, rerr))
		}
	}
	return parseColorScheme(v)
}

// parseColorScheme unwraps the (possibly nested) variant returned by the
// portal and maps the uint32 setting to a Scheme.
func parseColorScheme(v dbus.Variant) (Scheme, error) {
	value := v.Value()
	for {
		inner, ok := value.(dbus.Variant)
		if !ok {
			break
		}
		value = inner.Value()
	}

	n, ok := value.(uint32)
	if !ok {
		return SchemeUnknown, fmt.Errorf("unexpected color-scheme type %T", value)
	}

	switch n {
	case portalPreferDark:
		return SchemeDark, nil
	case portalPreferLight:
		return SchemeLight, nil
	case portalNoPreference:
		return SchemeUnknown, nil
	default:
		return SchemeUnknown, fmt.Errorf("unknown color-scheme value %d", n)
	}
}

func sessionCall(ctx context.Context, method string, args ...any) (dbus.Variant, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return dbus.Variant{}, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	// Don't close the connection as it's shared (SessionBus)

	var v dbus.Variant
	obj := conn.Object(PortalDest, dbus.ObjectPath(PortalPath))
	if err := obj.CallWithContext(ctx, method, 0, args...).Store(&v); err != nil {
		return dbus.Variant{}, err
	}
	return v, nil
}
