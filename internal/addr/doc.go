/*
Package addr provides a structured, type-safe representation for the
addresses of materialization units, based on the canonical formats
`stack/kind.name` for resources and `stack/kind[index]` for relationships,
e.g. `orders/queue.orders-dlq` or `orders/dead_letter[2]`.

The package enforces the address schema and centralizes all formatting and
parsing logic, so backends and logs agree on one spelling per unit.
*/
package addr
