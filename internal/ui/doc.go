package ui

// Package ui wires the device registry, network scanner, bridge invoker,
// and mirror service to clickable controls. It holds no business logic of
// its own: every button is a thin call into one of the services, and all
// state lives in the services and the registry.
