package assets

var (
	OsMap = map[string]string{
		// windows
		"windows": "windows",
		"win":     "windows",
		"win32":   "windows",

		// linux
		"linux": "linux",

		// darwin
		"darwin": "darwin",
		"macos":  "darwin",
		"mac":    "darwin",
		"osx":    "darwin",
	}

	ArchMap = map[string]string{
		// 386
		"386":    "386",
		"x86":    "386",
		"x86_32": "386",
		"i386":   "386",

		// amd64
		"amd64":   "amd64",
		"x64":     "amd64",
		"x86_64":  "amd64",
		"intel64": "amd64",

		// arm
		"arm": "arm",

		// arm64
		"arm64":   "arm64",
		"aarch64": "arm64",
	}
)

// NormalizeOS maps platform aliases (win32, mac, osx, ...) onto GOOS names.
// Unknown values pass through unchanged.
func NormalizeOS(osName string) string {
	if v, ok := OsMap[osName]; ok {
		return v
	}
	return osName
}

// NormalizeArch maps architecture aliases (x64, aarch64, ...) onto GOARCH
// names. Unknown values pass through unchanged.
func NormalizeArch(arch string) string {
	if v, ok := ArchMap[arch]; ok {
		return v
	}
	return arch
}
