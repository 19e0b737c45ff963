// Package pageswap provides a page-swap router: it maps a path to an HTML
// fragment and an optional page module, swaps the fragment into the main
// slot of a [Document] and keeps the titles and navigation links in sync.
//
// The browser surfaces are interfaces ([Document], [History], [Fetcher]);
// package memdom provides in-memory implementations and package server
// renders the same routes over HTTP with htmx.
package pageswap
