/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package chat

import "github.com/hemolens/hemolens/logging"

var logger = logging.Logger(logging.SourceChat)
