/*
Package session runs chat turns against persisted sessions.

The interpreter is stateless; Manager is the caller that keeps one state per
session. It loads the state, hands it to the engine with the input line, and
stores the successor, holding a per-session lock (and optionally a distributed
lock) for the whole cycle so concurrent lines of one session are serialised.
*/
package session
