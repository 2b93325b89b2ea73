// Package swagger holds the OpenAPI document of the HTTP API, registered
// with swag so that gofiber/swagger can serve it under /swagger.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/blacklist": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "blacklist"
                ],
                "summary": "List Blacklist",
                "responses": {
                    "200": {
                        "description": "Persistence flag, count and names",
                        "schema": {
                            "type": "object"
                        }
                    }
                }
            }
        },
        "/blacklist/{name}": {
            "put": {
                "description": "Hides an origin file from catalog name listings. Adding a listed file is a no-op.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "blacklist"
                ],
                "summary": "Blacklist Origin File",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Plugin file name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Status and name",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "400": {
                        "description": "Invalid plugin name",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "blacklist"
                ],
                "summary": "Remove From Blacklist",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Plugin file name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Status and name",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Not blacklisted",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/cells": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List Cells",
                "responses": {
                    "200": {
                        "description": "Count and cells",
                        "schema": {
                            "type": "object"
                        }
                    }
                }
            }
        },
        "/catalog/cells/{editorID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Get Cell",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Cell editor ID",
                        "name": "editorID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/catalog.CellInfo"
                        }
                    },
                    "404": {
                        "description": "Cell not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/counts": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Record Counts",
                "responses": {
                    "200": {
                        "description": "Records per category",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "integer"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/names": {
            "get": {
                "description": "Sorted origin names of a category without blacklisted files, optionally restricted to a capability and a name substring.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List Origin Names",
                "parameters": [
                    {
                        "type": "string",
                        "description": "all, item, npc, static or cell",
                        "name": "category",
                        "in": "query",
                        "default": "all",
                        "enum": [
                            "all",
                            "item",
                            "npc",
                            "static",
                            "cell"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Sort order",
                        "name": "order",
                        "in": "query",
                        "default": "alphabetical",
                        "enum": [
                            "none",
                            "alphabetical",
                            "compileindex_asc",
                            "compileindex_desc"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "Capability filter, e.g. weapon",
                        "name": "capability",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Case-insensitive name substring",
                        "name": "contains",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Count and names",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Unknown category, order or capability",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/origins": {
            "get": {
                "description": "Lists the origin files of a category with their load-order indices and capabilities.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List Origin Files",
                "parameters": [
                    {
                        "type": "string",
                        "description": "all, item, npc, static or cell",
                        "name": "category",
                        "in": "query",
                        "default": "all",
                        "enum": [
                            "all",
                            "item",
                            "npc",
                            "static",
                            "cell"
                        ]
                    },
                    {
                        "type": "string",
                        "description": "none, alphabetical, compileindex_asc or compileindex_desc",
                        "name": "order",
                        "in": "query",
                        "default": "none",
                        "enum": [
                            "none",
                            "alphabetical",
                            "compileindex_asc",
                            "compileindex_desc"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Category, order and origins",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Unknown category or order",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/origins/{name}": {
            "get": {
                "description": "Returns one origin file by name, ignoring case.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Get Origin File",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Plugin file name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/catalog.OriginInfo"
                        }
                    },
                    "404": {
                        "description": "Origin not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/rebuild": {
            "post": {
                "description": "Rebuilds every category, or only the given one. Concurrent requests share one rebuild.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "Rebuild Catalog",
                "parameters": [
                    {
                        "type": "string",
                        "description": "all, item, npc, static or cell",
                        "name": "category",
                        "in": "query",
                        "default": "all",
                        "enum": [
                            "all",
                            "item",
                            "npc",
                            "static",
                            "cell"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Status and counts",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "400": {
                        "description": "Unknown category",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/catalog/records/{category}": {
            "get": {
                "description": "Lists the records of item, npc or static. Cell requests are redirected to /catalog/cells.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "catalog"
                ],
                "summary": "List Records",
                "parameters": [
                    {
                        "type": "string",
                        "description": "item, npc or static",
                        "name": "category",
                        "in": "path",
                        "required": true,
                        "enum": [
                            "item",
                            "npc",
                            "static"
                        ]
                    },
                    {
                        "type": "boolean",
                        "description": "Resolve record properties",
                        "name": "properties",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Category, count and records",
                        "schema": {
                            "type": "object"
                        }
                    },
                    "303": {
                        "description": "Redirect to /catalog/cells"
                    },
                    "400": {
                        "description": "Unknown record category",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "catalog.CellInfo": {
            "type": "object",
            "properties": {
                "editor_id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "origin": {
                    "type": "string"
                }
            }
        },
        "catalog.OriginInfo": {
            "type": "object",
            "properties": {
                "capabilities": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "combined_index": {
                    "type": "integer"
                },
                "compile_index": {
                    "type": "integer"
                },
                "light": {
                    "type": "boolean"
                },
                "name": {
                    "type": "string"
                },
                "prefix": {
                    "type": "string"
                },
                "small_file_compile_index": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Content Catalog API",
	Description:      "Origin files, records and cells of an indexed plugin load order.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
