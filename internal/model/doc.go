package model

// Package model defines domain data structures used across the app: known
// devices, scan results, and mirror session status enums. Structures are
// designed for direct binding in the UI and explicit state transitions.
