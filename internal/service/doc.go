// Package service provides application-level services that orchestrate
// domain logic, persistence, and background task scheduling for verbs,
// cards, and users.
package service
