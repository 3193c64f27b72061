// Package plantree is the format-neutral output of the compiler: an ordered
// tree of typed nodes that a serializer turns into a load-test tool's file
// format.
//
// Every node owns a (possibly empty) child list, and property values are a
// closed set of kinds (string, bool, int, object, list) so serializers can
// switch over them exhaustively.
package plantree
