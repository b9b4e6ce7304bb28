package sysinfo

import (
	"os"
	"strings"

	"howett.net/plist"
)

const systemVersionPlist = "/System/Library/CoreServices/SystemVersion.plist"

type systemVersion struct {
	ProductName    string `plist:"ProductName"`
	ProductVersion string `plist:"ProductVersion"`
}

// macOSVersion reads the marketing version ("14.5") instead of the Darwin
// kernel release.
func macOSVersion() string {
	data, err := os.ReadFile(systemVersionPlist)
	if err != nil {
		return ""
	}
	return parseSystemVersion(data)
}

func parseSystemVersion(data []byte) string {
	var v systemVersion
	if _, err := plist.Unmarshal(data, &v); err != nil {
		return ""
	}
	return strings.TrimSpace(v.ProductVersion)
}
