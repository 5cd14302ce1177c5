// SPDX-License-Identifier: GPL-2.0-only

package checksum

import "errors"

var (
	errShortVerdict   = errors.New("checksum: verdict byte length does not match its kind")
	errUnsupportedKind = errors.New("checksum: unsupported check kind")
)
