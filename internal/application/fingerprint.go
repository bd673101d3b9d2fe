package application

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
)

// fingerprintLen is the number of hex characters kept from the digest
const fingerprintLen = 32

// Fingerprint identifies a recognition result for a given video file state
// and recognition setup. Touching, replacing or resizing the video changes it.
func Fingerprint(videoPath string, info os.FileInfo, engine, model, language string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%s|%s|%s|%s",
		videoPath,
		info.Size(),
		strconv.FormatInt(info.ModTime().UnixNano(), 10),
		engine,
		model,
		language,
	)
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen]
}
