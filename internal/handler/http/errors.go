// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrUnknownChannel is returned for a notification channel other than
// "process" or "audit".
var ErrUnknownChannel = errors.New("unknown notification channel")
