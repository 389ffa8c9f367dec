package ipa

import (
	"github.com/pkg/errors"
	"howett.net/plist"
)

const (
	keyBundleName        = "CFBundleName"
	keyBundleDisplayName = "CFBundleDisplayName"
	keyShortVersion      = "CFBundleShortVersionString"
	keyBundleVersion     = "CFBundleVersion"
	keyBundleIdentifier  = "CFBundleIdentifier"
	keyIconFiles         = "CFBundleIconFiles"
	keyIconFile          = "CFBundleIconFile"
	keyIcons             = "CFBundleIcons"
	keyIconsPad          = "CFBundleIcons~ipad"
	keyPrimaryIcon       = "CFBundlePrimaryIcon"
)

// BundleInfo is the part of Info.plist the tool reports.
type BundleInfo struct {
	Name             string
	Version          string
	BundleIdentifier string
	IconFiles        []string
}

// DecodeBundleInfo parses an XML or binary Info.plist.
func DecodeBundleInfo(data []byte) (BundleInfo, error) {
	var dict map[string]interface{}
	if _, err := plist.Unmarshal(data, &dict); err != nil {
		return BundleInfo{}, errors.Wrapf(ErrInvalidIPA, "Info.plist is not a dictionary: %v", err)
	}

	name, ok := firstString(dict, keyBundleName, keyBundleDisplayName)
	if !ok {
		return BundleInfo{}, errors.WithStack(&MissingFieldError{Field: keyBundleName})
	}
	version, ok := firstString(dict, keyShortVersion, keyBundleVersion)
	if !ok {
		return BundleInfo{}, errors.WithStack(&MissingFieldError{Field: keyShortVersion})
	}
	id, ok := firstString(dict, keyBundleIdentifier)
	if !ok {
		return BundleInfo{}, errors.WithStack(&MissingFieldError{Field: keyBundleIdentifier})
	}

	return BundleInfo{
		Name:             name,
		Version:          version,
		BundleIdentifier: id,
		IconFiles:        iconNames(dict),
	}, nil
}

func firstString(dict map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		if s, ok := dict[key].(string); ok {
			return s, true
		}
	}
	return "", false
}

// iconNames collects candidate icon names in first-seen order from the
// legacy keys and the CFBundleIcons dictionaries.
func iconNames(dict map[string]interface{}) []string {
	var names []string
	add := func(name string) {
		for _, n := range names {
			if n == name {
				return
			}
		}
		names = append(names, name)
	}
	addAll := func(v interface{}) {
		items, _ := v.([]interface{})
		for _, item := range items {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	}

	addAll(dict[keyIconFiles])
	if s, ok := dict[keyIconFile].(string); ok {
		add(s)
	}
	for _, key := range []string{keyIcons, keyIconsPad} {
		icons, _ := dict[key].(map[string]interface{})
		primary, _ := icons[keyPrimaryIcon].(map[string]interface{})
		addAll(primary[keyIconFiles])
	}
	return names
}
