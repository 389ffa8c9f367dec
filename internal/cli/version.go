package cli

import (
	"fmt"
	"io"

	"github.com/AppleEcosystem/ipa-metadata/internal/ipa"
)

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "ipa-metadata %s\n", ipa.LibraryVersion)
}
