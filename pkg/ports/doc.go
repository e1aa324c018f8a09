/*
Package ports defines the driven ports (interfaces) of the chat interpreter.

These interfaces decouple the core logic from external implementations, allowing
sessions to be kept in memory, on disk or in Redis.

# Key Interfaces

  - Interpreter: the stateless engine surface used by transports.
  - StateStore: persists ConversationState between turns.
  - DistributedLocker: serialises turns of one session across replicas.
*/
package ports
