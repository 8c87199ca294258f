// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/z5labs/serverboot"
	"github.com/z5labs/serverboot/binding"
	"github.com/z5labs/serverboot/config"
	"github.com/z5labs/serverboot/container"
)

type greeting struct {
	Message string `json:"message"`
}

func hello(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "world"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(greeting{Message: fmt.Sprintf("Hello, %s", name)})
}

func main() {
	app := container.NewResourceConfig(
		container.Mount("/v1", container.Endpoints{
			container.HandleFunc("/hello", hello),
		}),
	)

	err := serverboot.New(
		serverboot.Name("hello"),
		serverboot.Application(binding.Of[container.Application](app)),
		serverboot.Defaults(config.Map{
			"otel": config.Map{
				"serviceName": "hello",
			},
		}),
	).Run(os.Args[1:]...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
