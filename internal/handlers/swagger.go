package handlers

// @title Tribute API
// @version 1.0
// @description Create, list, update and delete memorial tributes

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8888
// @BasePath /api/v1

// @tag.name tributes
// @tag.description Tribute operations
