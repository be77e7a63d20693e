// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides HTTP request handling functionality for guidefe.

Route definitions are centralized in the DefineRoutes function, which sets up all paths
and their corresponding handlers using the standard library ServeMux.
*/
package middleware
