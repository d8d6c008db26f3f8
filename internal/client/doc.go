// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles the back-office client runtime.
//
// It wires the credential cache, the identity provider, the REST adapters, the
// realtime channel and the search pipeline into one [App], and owns their
// teardown: on Close the channel is disconnected and both notification lists
// are cleared.
package client
