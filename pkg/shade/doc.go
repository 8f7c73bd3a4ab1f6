/*
Package shade layers shading networks over a stage.

A Shader is a handle on a prim. Its ports are the prim's "inputs:" and
"outputs:" attributes, its implementation is selected by the
"info:implementationSource" token, and its registry metadata lives in the
"sdrMetadata" dictionary. Every query reads through the stage's
contributor list, so opinions authored on inherited class prims show
through until a nearer prim overrides them.

Connections are stored on the consuming port as a list of property paths.
Three states are distinguished:

	unauthored    nothing is stored locally, inherited opinions apply
	connected     a non-empty list is stored locally
	disconnected  an empty list is stored locally and hides inherited opinions

ClearSources returns a port to the unauthored state, DisconnectSource
moves it to the disconnected state.

Connected ports are not type checked against their sources.
*/
package shade
