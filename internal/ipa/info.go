package ipa

import "strconv"

const LibraryVersion = "0.3.0"

// Info is the JSON record emitted for one archive.
type Info struct {
	AppName             string
	AppVersion          string
	AppBundleIdentifier string
	AppSize             uint64
	// IconName is empty when no icon was extracted.
	IconName  string
	FileName  string
	Timestamp int64
}

func (i Info) jsonFields() []jsonKV {
	fields := []jsonKV{
		{Key: "AppName", Val: i.AppName},
		{Key: "AppVersion", Val: i.AppVersion},
		{Key: "AppBundleIdentifier", Val: i.AppBundleIdentifier},
		{Key: "AppSize", Val: strconv.FormatUint(i.AppSize, 10), Raw: true},
	}
	if i.IconName != "" {
		fields = append(fields, jsonKV{Key: "IconName", Val: i.IconName})
	}
	fields = append(fields,
		jsonKV{Key: "FileName", Val: i.FileName},
		jsonKV{Key: "Timestamp", Val: strconv.FormatInt(i.Timestamp, 10), Raw: true},
	)
	return fields
}
