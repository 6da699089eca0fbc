// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package api exposes the registry over HTTP.

The surface is a plain [net/http.ServeMux] with method-qualified patterns:

	GET  /v1/packages                                    list, optional CEL filter
	POST /v1/packages                                    multipart publish
	GET  /v1/skills/{slug}                               fetch one skill
	GET  /v1/roles/{slug}                                fetch one role
	GET  /v1/skills/{slug}/versions                      list versions
	GET  /v1/roles/{slug}/versions                       list versions
	GET  /v1/roles/{slug}/resolve                        resolve dependency closure
	GET  /v1/skills/{slug}/versions/{version}/archive    download tar.gz
	GET  /v1/roles/{slug}/versions/{version}/archive     download tar.gz

Publishing requires an Authorization header carrying the actor identifier as
a Bearer token. Authentication itself happens upstream; the server only
validates the header shape and trusts the identifier.

Domain errors map to HTTP status codes in one place (see respondError),
carried through the stack as httperr coded errors where the domain error
alone does not determine the code.
*/
package api
