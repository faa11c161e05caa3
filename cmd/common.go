/*
Copyright © 2025 speaktech

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/speaktech/transqiita/internal/translator"
)

// buildService constructs the translation backend named by the --service
// flag.
func buildService(name, credentialsFile, mymemoryEmailAddr string) (translator.Service, error) {
	switch name {
	case "google":
		return translator.NewGoogleService(credentialsFile), nil
	case "mymemory":
		return translator.NewMyMemoryService(mymemoryEmailAddr), nil
	default:
		return nil, fmt.Errorf("unknown translation service %q (available: google, mymemory)", name)
	}
}
