package router

import "github.com/katalvlaran/starlane/galaxy"

// SetBeforeSearch installs a hook run ahead of every query search.
func SetBeforeSearch(r *Router, fn func(galaxy.Query)) { r.beforeSearch = fn }
