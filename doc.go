// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package serverboot bootstraps and runs a HTTP server around an
// optional, user supplied application.
//
// Configuration is layered from built in defaults, an optional YAML or
// JSON file, SERVERBOOT_ prefixed environment variables and command line
// flags, with later layers overriding earlier ones.
//
// # Basic Usage
//
//	app := container.Endpoints{
//	    container.HandleFunc("/hello", func(w http.ResponseWriter, r *http.Request) {
//	        fmt.Fprint(w, "hello, world")
//	    }),
//	}
//
//	err := serverboot.New(
//	    serverboot.Name("hello"),
//	    serverboot.Application(binding.Of[container.Application](app)),
//	).Run(os.Args[1:]...)
//
// The application is mounted at the configured context path, the path it
// declares via [container.Mount] or, lastly, the root path "/".
//
// Without a bound application the serve command logs that nothing is
// bound and exits successfully.
package serverboot
