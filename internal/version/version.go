// Package version holds build identity and the release update check.
package version

// Current is the application version echoed in every generated script.
// Overridden at build time with -ldflags "-X github.com/gxrwes/CS2QuickSetup/internal/version.Current=x.y.z"
var Current = "1.0.2"

// Author is echoed next to the version in the script header
const Author = "Wes Stillwell - stillwellstudios.com"
