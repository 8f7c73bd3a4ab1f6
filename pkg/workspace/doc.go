/*
Package workspace implements locked access to persisted layers.

A Manager loads layers from a ports.LayerStore into stages, and saves
stages back. Access to one layer ID is serialized in-process with
reference-counted mutexes and, optionally, across processes with a
ports.DistributedLocker. Edit wraps a full load-modify-save cycle in a
single critical section.
*/
package workspace
