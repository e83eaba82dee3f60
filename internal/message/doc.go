// Package message decodes the object header message bodies this decoder
// recognizes: [Dataspace], [Datatype], [DataStorage], [FilterPipeline],
// [Link], [SymbolTable], and [Continuation].
//
// Every other message type — fill value, modification time, nil, and
// anything unrecognized — comes back as [Unknown]: the object header
// reader already consumed its declared size, so there is nothing further
// to decode.
package message
