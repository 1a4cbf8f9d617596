package navigation

import (
	"runtime"
	"strings"
)

type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformMobile  Platform = "mobile"
	PlatformDesktop Platform = "desktop"
)

// Handheld reports whether the platform can give a live device position.
func (p Platform) Handheld() bool {
	return p != PlatformDesktop
}

var (
	iosMarkers    = []string{"iphone", "ipad", "ipod", "ios"}
	mobileMarkers = []string{"mobile", "windows phone", "blackberry", "opera mini", "iemobile", "webos", "kindle", "silk"}
)

// DetectPlatform classifies a platform signature: a user-agent string or an
// operating system name such as runtime.GOOS. Anything unrecognised is desktop.
func DetectPlatform(signature string) Platform {
	s := strings.ToLower(strings.TrimSpace(signature))
	if s == "" {
		return PlatformDesktop
	}
	if strings.Contains(s, "android") {
		return PlatformAndroid
	}
	for _, m := range iosMarkers {
		if strings.Contains(s, m) {
			return PlatformIOS
		}
	}
	for _, m := range mobileMarkers {
		if strings.Contains(s, m) {
			return PlatformMobile
		}
	}
	return PlatformDesktop
}

// CurrentPlatform detects the platform of the running binary, unless override
// names one.
func CurrentPlatform(override string) Platform {
	if override != "" {
		return DetectPlatform(override)
	}
	return DetectPlatform(runtime.GOOS)
}
