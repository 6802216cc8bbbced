// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import _ "modernc.org/sqlite"

const driverName = "sqlite"
