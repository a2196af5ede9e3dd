// Package dev reloads a running site when its content changes.
//
// A Watcher polls the content directory and the project config for
// modified, added and removed files. A Reloader reacts to those changes by
// reopening the site and swapping it into the server, which also empties
// the page cache. A site that fails to load is reported and the previous
// one keeps serving.
//
// # Usage
//
//	r := dev.NewReloader(cfg, srv)
//	go r.Run(ctx)
//
// Live sessions that are already open keep their widgets. Reloading the
// browser tab picks up the new content.
package dev
