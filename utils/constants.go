// File: utils/constants.go
package utils

// AvailabilityCachePrefix prefixes Redis keys holding resolved availability.
const AvailabilityCachePrefix = "availability:"

// AvailabilityGenerationPrefix prefixes the per-date invalidation counters.
const AvailabilityGenerationPrefix = "availability:gen:"
