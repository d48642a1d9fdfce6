/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package common

import "time"

const releaseYear = 2026
const releaseMonth = 7
const releaseDay = 12

// Version holds version information, when bumping this make sure to bump the released at stamp also.
const Version = "0.9.0"

var ReleasedAt = time.Date(releaseYear, releaseMonth, releaseDay, 10, 30, 0, 0, time.UTC)
