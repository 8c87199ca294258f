// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides layered configuration for bootstrapping a server.
//
// A [Source] applies key value pairs to a [Store]. [Read] applies every
// given source, in order, so later sources override earlier ones, and
// the resulting [Manager] decodes the merged values into a struct using
// the "config" struct tag:
//
//	m, err := config.Read(
//	    config.Map{"host": "0.0.0.0", "port": 8080},
//	    config.FromFile(os.DirFS("."), "config.yaml", configtmpl.Funcs()...),
//	    config.FromEnv(config.EnvPrefix("SERVERBOOT_")),
//	)
//	if err != nil {
//	    return err
//	}
//
//	var cfg server.Config
//	err = m.Unmarshal(&cfg)
//
// Keys are case-insensitive.
package config
