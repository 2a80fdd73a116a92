// Package domain defines the core business entities of the application:
// users, the verbs they study, the drill cards generated for those verbs,
// and the per-user spaced repetition statistics.
package domain
