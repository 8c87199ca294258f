// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestFileReader_Read(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the file does not exist", func(t *testing.T) {
			r := NewFileReader(fstest.MapFS{}, "config.yaml")

			_, err := io.ReadAll(r)
			assert.ErrorIs(t, err, fs.ErrNotExist)
		})

		t.Run("if read again after failing to open", func(t *testing.T) {
			r := NewFileReader(fstest.MapFS{}, "config.yaml")

			_, err := io.ReadAll(r)
			if !assert.Error(t, err) {
				return
			}
			_, err = r.Read(make([]byte, 1))
			assert.ErrorIs(t, err, fs.ErrNotExist)
		})
	})

	t.Run("will read the file contents", func(t *testing.T) {
		fsys := fstest.MapFS{
			"config.yaml": &fstest.MapFile{Data: []byte("host: 0.0.0.0")},
		}
		r := NewFileReader(fsys, "config.yaml")
		defer r.Close()

		b, err := io.ReadAll(r)
		if !assert.Nil(t, err) {
			return
		}
		assert.Equal(t, "host: 0.0.0.0", string(b))
	})
}

func TestFromFile(t *testing.T) {
	testCases := []struct {
		Name string
		Path string
		Data string
	}{
		{Name: "yaml file", Path: "config.yaml", Data: "port: {{ portNum }}\n"},
		{Name: "json file", Path: "config.json", Data: `{"port": {{ portNum }}}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			fsys := fstest.MapFS{
				testCase.Path: &fstest.MapFile{Data: []byte(testCase.Data)},
			}

			src := FromFile(fsys, testCase.Path, TemplateFunc("portNum", func() int { return 9090 }))
			m, err := Read(src)
			if !assert.Nil(t, err) {
				return
			}

			var cfg bootConfig
			err = m.Unmarshal(&cfg)
			if !assert.Nil(t, err) {
				return
			}
			assert.Equal(t, uint(9090), cfg.Port)
		})
	}
}
