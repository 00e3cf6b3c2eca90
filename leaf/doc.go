// Package leaf provides leaf futures: futures with no children. Sleep,
// DialRead and RedisGet each bridge one external readiness source (a timer,
// a socket, a Redis client) onto an asyncrt.Reactor and are the futures that
// actually register file descriptors; Value and Error resolve on their first
// progress call without touching the reactor. Combinators in the parent
// package only ever wrap leaves (or other combinators) built here or by a
// caller.
//
// Every constructor in this package returns *asyncrt.Future so leaves
// compose directly with asyncrt.Then, asyncrt.Join, and asyncrt.Select.
package leaf
